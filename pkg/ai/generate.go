package ai

import (
	_ "go.uber.org/mock/gomock"
)

//go:generate mockgen -package mocks -destination mocks/mock_recognizer.go github.com/recognarr/recognarr/pkg/ai Recognizer
