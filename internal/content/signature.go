package content

// Signature is the front matter of an author signature snippet.
type Signature struct {
	Current bool `json:"current"`
}

type signatureFrontMatter struct {
	Current bool `yaml:"current"`
}

// ParseSignature splits src into signature front matter and markdown body.
// Current defaults to false.
func ParseSignature(src []byte) (*Signature, []byte, error) {
	var raw signatureFrontMatter
	body, err := splitFrontMatter(src, &raw)
	if err != nil {
		return nil, nil, err
	}
	return &Signature{Current: raw.Current}, body, nil
}
