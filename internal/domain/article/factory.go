package article

import "time"

// NewFromCreateRequest builds an unsaved Article. The store assigns ID.
func NewFromCreateRequest(req CreateArticleRequest, now time.Time) Article {
	return Article{
		Title:     *req.Title,
		Content:   *req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NextUpdatedAt returns the updatedAt for a mutation happening at now. It is
// always strictly after prev, even when the clock has not advanced a full
// microsecond (the resolution postgres keeps).
func NextUpdatedAt(prev, now time.Time) time.Time {
	floor := prev.Add(time.Microsecond)
	if now.Before(floor) {
		return floor
	}
	return now
}

// Apply replaces title and content wholesale.
func (a Article) Apply(req UpdateArticleRequest, now time.Time) Article {
	a.Title = *req.Title
	a.Content = *req.Content
	a.UpdatedAt = NextUpdatedAt(a.UpdatedAt, now)
	return a
}
