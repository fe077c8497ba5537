package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactOpts are the render settings that change the output bytes.
type ArtifactOpts struct {
	Format   string  `json:"format"`
	Engine   string  `json:"engine"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	// Settings folds in any configuration the renderer reads, such as
	// router spacing or the default node color.
	Settings any `json:"settings,omitempty"`
}

// ArtifactKey builds the key for a rendered document. doc is the
// canonical encoding of the document being rendered.
func ArtifactKey(doc []byte, opts ArtifactOpts) string {
	optBytes, _ := json.Marshal(opts)
	return "artifact:" + Hash(doc) + ":" + Hash(optBytes)
}
