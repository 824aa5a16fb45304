package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ArtifactKeyOpts lists every input that changes a rendered artifact. The
// merge strategy is absent: both strategies carve the same maze for a seed.
// Wall and Floor should be canonical hex so that equal colours share a key.
type ArtifactKeyOpts struct {
	Height      int     `json:"h"`
	Width       int     `json:"w"`
	Seed        uint64  `json:"seed"`
	Format      string  `json:"format"`
	FrameWidth  float64 `json:"fw,omitempty"`
	FrameHeight float64 `json:"fh,omitempty"`
	Margin      float64 `json:"margin,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Wall        string  `json:"wall,omitempty"`
	Floor       string  `json:"floor,omitempty"`
	Title       string  `json:"title,omitempty"`
	Labels      bool    `json:"labels,omitempty"`
}

// ArtifactKey returns "artifact:<format>:<sha256 of opts>".
func ArtifactKey(opts ArtifactKeyOpts) string {
	data, _ := json.Marshal(opts)
	return "artifact:" + opts.Format + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
