package models

import "time"

// ListSummary is the collection-view shape of a list: no item bodies,
// author reduced to a username.
type ListSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Author       string    `json:"author"`
	ItemCount    int64     `json:"item_count"`
	Likes        int64     `json:"likes,omitempty"`
	Reads        int64     `json:"reads,omitempty"`
	CommentCount int64     `json:"comment_count,omitempty"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListDetail is the single-list shape: full items and resolved tag names.
type ListDetail struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Author       string     `json:"author"`
	Items        []ListItem `json:"items"`
	Tags         []string   `json:"tags"`
	Likes        int64      `json:"likes,omitempty"`
	Reads        int64      `json:"reads,omitempty"`
	CommentCount int64      `json:"comment_count,omitempty"`
	URL          string     `json:"url"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Summary projects a list, with Author preloaded, into its summary shape.
func (l *List) Summary() ListSummary {
	s := ListSummary{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Author:      l.Author.Username,
		ItemCount:   l.ItemCount,
		URL:         l.URL(),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.Visibility == VisibilityPublic {
		s.Likes = l.Likes
		s.Reads = l.Reads
		s.CommentCount = l.CommentCount
	}
	return s
}

// Detail projects a list, with Items, Tags and Author preloaded, into its
// detail shape.
func (l *List) Detail() ListDetail {
	tags := make([]string, 0, len(l.Tags))
	for _, t := range l.Tags {
		tags = append(tags, t.Tag)
	}
	items := l.Items
	if items == nil {
		items = []ListItem{}
	}
	d := ListDetail{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Author:      l.Author.Username,
		Items:       items,
		Tags:        tags,
		URL:         l.URL(),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.Visibility == VisibilityPublic {
		d.Likes = l.Likes
		d.Reads = l.Reads
		d.CommentCount = l.CommentCount
	}
	return d
}

// CommentView is a comment with its author resolved to a username.
type CommentView struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// View projects a comment, with Author preloaded, into its response shape.
func (c *Comment) View() CommentView {
	return CommentView{
		ID:        c.ID,
		Body:      c.Body,
		Author:    c.Author.Username,
		CreatedAt: c.CreatedAt,
	}
}
