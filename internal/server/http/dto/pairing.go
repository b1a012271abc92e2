package dto

import "time"

// PairTargetRequest names the other side of a pairing operation.
type PairTargetRequest struct {
	UserID int64 `json:"userId"`
}

// PairCandidateResponse describes a receiver found by login search.
type PairCandidateResponse struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	DisplayName string `json:"displayName"`
}

// PairRequestResponse describes a pending pairing request.
type PairRequestResponse struct {
	SenderID    int64     `json:"senderId"`
	Login       string    `json:"login"`
	DisplayName string    `json:"displayName"`
	RequestedAt time.Time `json:"requestedAt"`
}
