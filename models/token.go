package models

// TokenPair holds the two session credentials. A pair is always minted, persisted
// and replaced together; the fields are never rotated individually. The refresh
// token is single use: the identity API invalidates it on every successful exchange.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether both credentials are present.
func (p TokenPair) Complete() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}
