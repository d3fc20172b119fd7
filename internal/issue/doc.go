// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error types for petripack.
//
// ActionableError carries the failed operation, the resource involved, and
// suggestions for fixing the problem; the cmd layer renders it differently
// in normal and verbose mode. The Issue catalog holds longer markdown help
// texts for the recurring configuration failures, rendered with glamour.
package issue
