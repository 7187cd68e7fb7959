package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// recordIDLength mantém a probabilidade de colisão desprezível por usuário
const recordIDLength = 12

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, recordIDLength)
}
