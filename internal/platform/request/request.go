// Copyright (c) 2026 Libris. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/libris/libris/internal/platform/apperr"
	"github.com/libris/libris/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
FormFile reads a single multipart upload field into memory, enforcing maxBytes
on the request body before any parsing happens.

Returns:
  - []byte: The raw file content
  - string: The declared Content-Type of the part
  - int64: The declared size of the part
  - error: apperr.ValidationError when the field is missing or the body exceeds maxBytes
*/
func FormFile(writer http.ResponseWriter, request *http.Request, field string, maxBytes int64) ([]byte, string, int64, error) {
	// Reject oversized bodies at the transport level before buffering anything.
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes)

	if err := request.ParseMultipartForm(maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, "", 0, apperr.ValidationError("File too large. Maximum size: 10MB.")
		}
		return nil, "", 0, apperr.ValidationError("Invalid multipart form data")
	}

	file, header, err := request.FormFile(field)
	if err != nil {
		return nil, "", 0, apperr.ValidationError("No file uploaded")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", 0, apperr.Internal(err)
	}

	return data, header.Header.Get("Content-Type"), header.Size, nil
}
