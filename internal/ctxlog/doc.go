// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger built on log/slog.
//
// The default is a pretty console handler that formats messages in a human-readable way.
// The level comes from an environment variable derived from the executable name,
// for example QUICKTEST_LOG_LEVEL. Accepted values are DEBUG, INFO, WARN and ERROR;
// anything else means WARN, which keeps normal runs limited to status output.
package ctxlog
