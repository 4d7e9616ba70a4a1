// Package util provides small generic helpers shared by the result packages:
// slice and map utilities, pointer helpers and string validation.
package util
