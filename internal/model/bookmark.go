package model

type Bookmark struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Ctime       int64  `json:"createdAt"`
	Mtime       int64  `json:"updatedAt"`
}

type BookmarkPatch struct {
	Title       *string
	Description *string
	Link        *string
}

// Apply copies the set fields of p onto b and reports whether anything changed.
func (p BookmarkPatch) Apply(b *Bookmark) bool {
	changed := false
	if p.Title != nil && *p.Title != b.Title {
		b.Title = *p.Title
		changed = true
	}
	if p.Description != nil && *p.Description != b.Description {
		b.Description = *p.Description
		changed = true
	}
	if p.Link != nil && *p.Link != b.Link {
		b.Link = *p.Link
		changed = true
	}
	return changed
}
