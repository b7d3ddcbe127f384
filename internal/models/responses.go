package models

import "time"

// ResponseModel is the structured error envelope returned by the facade
// when a request cannot be served. Successful data endpoints return their
// payloads bare.
type ResponseModel struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

// NewErrorResponse builds an error envelope stamped with the given time.
func NewErrorResponse(code int, text string, now time.Time) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: now.UnixMilli(),
		Text:        text,
		Version:     2,
	}
}
