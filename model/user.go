package model

// User holds the local profile data relevant to the application (outside of
// the identity provider). Id is the immutable firebase UID.
type User struct {
	Id          string `db:"firebase_id" json:"id"`
	Handle      string `db:"handle" json:"handle"`
	DisplayName string `db:"display_name" json:"displayName"`
	Avatar      string `db:"-" json:"avatar"`
}
