package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera um identificador curto, usado como X-Request-ID nas chamadas aos backends
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 12)
}
