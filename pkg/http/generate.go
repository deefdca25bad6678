package http

import (
	_ "go.uber.org/mock/gomock"
)

//go:generate mockgen -package mocks -destination mocks/mock_httpclient.go github.com/recognarr/recognarr/pkg/http HTTPClient
