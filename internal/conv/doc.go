// Package conv provides checked integer conversions for on-disk length fields.
package conv
