package auth

// IssueToken signs a token for the given user id using the configured secret
// and TTL. Pure apart from the signing operation itself.
func (s *Service) IssueToken(userID string) (AuthTokens, error) {
	return s.issueTokens(userID)
}

// CheckToken verifies signature and expiry and returns the embedded claims.
// Errors are domain token_invalid / token_expired.
func (s *Service) CheckToken(token string) (TokenClaims, error) {
	return s.signer.VerifyAccessToken(token)
}
