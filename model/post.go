package model

import "time"

// Post is a published entry. Author and CreatedAt are immutable after
// creation; Text, Group and ImageBlobName may only be changed by the author.
// A post has no workflow states: it is always readable by anyone.
type Post struct {
	Id            int64     `json:"id"`
	Text          string    `json:"text"`
	Author        *User     `json:"author"`
	Group         *Group    `json:"group,omitempty"`
	ImageBlobName string    `json:"imageBlobName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (p *Post) CanEdit(user *User) bool {
	return user != nil && user.Id == p.Author.Id
}

type Comment struct {
	Id        int64     `json:"id"`
	PostId    int64     `json:"postId"`
	Author    *User     `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
