// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the taskdesk project using Mage.
//
// Usage:
//
//	mage build       Compile taskdesk binary to bin/
//	mage test:all    Run all tests
//	mage test:race   Run all tests with the race detector
//	mage lint        Run golangci-lint
//go:build mage

package main
