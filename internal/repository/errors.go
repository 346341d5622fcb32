// Package repository contains catalog data access separated from HTTP
// handlers. These sentinel values let handlers distinguish failure
// scenarios without inspecting driver errors: a *NotFound maps to an
// HTTP 404, while anything else is treated as a database error.
package repository

import "errors"

// ErrNumberNotFound is returned when a VIP number id does not exist.
var ErrNumberNotFound = errors.New("number not found")

// ErrPackNotFound is returned when a pack id does not exist.
var ErrPackNotFound = errors.New("pack not found")

// ErrCategoryNotFound is returned when a category id or slug does not exist.
var ErrCategoryNotFound = errors.New("category not found")
