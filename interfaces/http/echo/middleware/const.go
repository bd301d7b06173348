package middleware

const (
	Authorization      = "Authorization"
	RefreshTokenHeader = "x-refresh-token"
	TokenKey           = "requestToken"
	RefreshTokenKey    = "requestRefreshToken"
	UserKey            = "requestUser"
)
