package models

import "database/sql"

type imageOp int

const (
	imageKeep imageOp = iota
	imageSet
	imageClear
)

// ImageUpdate says what a profile update does with the stored image
// reference. The zero value keeps the current image.
type ImageUpdate struct {
	op  imageOp
	ref string
}

func KeepImage() ImageUpdate { return ImageUpdate{op: imageKeep} }

// SetImage replaces the stored reference with ref.
func SetImage(ref string) ImageUpdate { return ImageUpdate{op: imageSet, ref: ref} }

// ClearImage removes the stored reference.
func ClearImage() ImageUpdate { return ImageUpdate{op: imageClear} }

func (u ImageUpdate) Keep() bool { return u.op == imageKeep }

func (u ImageUpdate) Ref() string { return u.ref }

// Value is the column value to write; only meaningful when !Keep().
func (u ImageUpdate) Value() sql.NullString {
	if u.op == imageSet {
		return sql.NullString{String: u.ref, Valid: true}
	}
	return sql.NullString{}
}

func (u ImageUpdate) String() string {
	switch u.op {
	case imageSet:
		return "set"
	case imageClear:
		return "clear"
	}
	return "keep"
}
