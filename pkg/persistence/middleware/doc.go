// Package middleware wraps response caches with at-rest protection.
package middleware
