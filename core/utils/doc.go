// Package utils provides common utility functions for the gamedata-wiki application.
// It includes helpers for loose type conversion of decoded JSON values (numbers,
// identifiers, truthiness) shared by the table renderer, the diff engine and the
// market editor.
package utils
