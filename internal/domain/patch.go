package domain

// Typed patches replace the original's spread-anything merge: each patch
// enumerates exactly the fields callers may update, so unknown fields are
// impossible by construction. Nil pointer = leave the field alone.

// FolderPatch is a partial update for a Folder.
type FolderPatch struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Order *int    `json:"order,omitempty" validate:"omitempty,gte=0"`
}

// Apply merges the patch into the folder and touches UpdatedAt if any
// field changed.
func (p *FolderPatch) Apply(f *Folder) bool {
	changed := false
	if p.Name != nil && *p.Name != f.Name {
		f.Name = *p.Name
		changed = true
	}
	if p.Color != nil && *p.Color != f.Color {
		f.Color = *p.Color
		changed = true
	}
	if p.Order != nil && *p.Order != f.Order {
		f.Order = *p.Order
		changed = true
	}
	if changed {
		f.Touch()
	}
	return changed
}

// TagPatch is a partial update for a Tag.
type TagPatch struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=60"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// Apply merges the patch into the tag.
func (p *TagPatch) Apply(t *Tag) bool {
	changed := false
	if p.Name != nil && *p.Name != t.Name {
		t.Name = *p.Name
		changed = true
	}
	if p.Color != nil && *p.Color != t.Color {
		t.Color = *p.Color
		changed = true
	}
	return changed
}

// ChatPatch is a partial update for a Chat's own fields. Pin state, folder
// assignment, and tag membership go through their dedicated operations so
// the cross-store invariants hold; only the title is patchable here.
type ChatPatch struct {
	Title *string `json:"title,omitempty" validate:"omitempty,min=1,max=300"`
}

// Apply merges the patch into the chat and touches UpdatedAt if changed.
func (p *ChatPatch) Apply(c *Chat) bool {
	if p.Title != nil && *p.Title != c.Title {
		c.Title = *p.Title
		c.Touch()
		return true
	}
	return false
}

// SnippetPatch is a partial update for a Snippet.
type SnippetPatch struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Content *string `json:"content,omitempty"`
}

// Apply merges the patch into the snippet and touches UpdatedAt if changed.
func (p *SnippetPatch) Apply(s *Snippet) bool {
	changed := false
	if p.Title != nil && *p.Title != s.Title {
		s.Title = *p.Title
		changed = true
	}
	if p.Content != nil && *p.Content != s.Content {
		s.Content = *p.Content
		changed = true
	}
	if changed {
		s.Touch()
	}
	return changed
}
