package models

import "encoding/json"

// CorrelationToken links a staff action in Slack back to the LINE
// conversation it belongs to. It is serialized into the Slack button
// value and modal private_metadata, and decoded again when Slack echoes
// it back - no server-side session state is ever kept.
type CorrelationToken struct {
	ReplyToken string `json:"replyToken"`
	UserID     string `json:"userId"`
}

// Encode serializes the token for embedding in a Slack payload.
func (t CorrelationToken) Encode() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeCorrelationToken parses a token previously produced by Encode.
func DecodeCorrelationToken(value string) (CorrelationToken, error) {
	var token CorrelationToken
	if err := json.Unmarshal([]byte(value), &token); err != nil {
		return CorrelationToken{}, err
	}
	return token, nil
}
