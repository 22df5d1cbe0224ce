package media

// AvatarSource carries at most one portrait source for a new character.
// Resolution precedence is upload, then generated URL, then generated inline
// data; all unset means the default avatar.
type AvatarSource struct {
	Upload        *Asset
	GeneratedURL  string
	GeneratedData string
}

func (s AvatarSource) IsZero() bool {
	return s.Upload == nil && len(s.GeneratedURL) == 0 && len(s.GeneratedData) == 0
}
