package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()

	var record any
	require.NoError(t, json.Unmarshal([]byte(raw), &record))

	return record
}

func TestExtractToken(t *testing.T) {
	testCases := []struct {
		description string
		record      string
		want        string
	}{
		{
			description: "top level access token",
			record:      `{"accessToken":" abc "}`,
			want:        "abc",
		},
		{
			description: "top level token",
			record:      `{"token":"tok"}`,
			want:        "tok",
		},
		{
			description: "access token preferred over token",
			record:      `{"token":"tok","accessToken":"acc"}`,
			want:        "acc",
		},
		{
			description: "blank access token falls through",
			record:      `{"accessToken":"  ","token":"tok"}`,
			want:        "tok",
		},
		{
			description: "nested under data",
			record:      `{"data":{"accessToken":"nested"}}`,
			want:        "nested",
		},
		{
			description: "nested twice",
			record:      `{"data":{"data":{"token":"deep"}}}`,
			want:        "deep",
		},
		{
			description: "non string token",
			record:      `{"accessToken":42}`,
			want:        "",
		},
		{
			description: "not an object",
			record:      `["accessToken"]`,
			want:        "",
		},
		{
			description: "null",
			record:      `null`,
			want:        "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.want, ExtractToken(decode(t, testCase.record)))
		})
	}
}

func TestExtractUserID(t *testing.T) {
	testCases := []struct {
		description string
		record      string
		want        string
	}{
		{
			description: "user _id",
			record:      `{"user":{"_id":"u1","id":"u2"}}`,
			want:        "u1",
		},
		{
			description: "user id",
			record:      `{"user":{"id":" u2 "}}`,
			want:        "u2",
		},
		{
			description: "data user",
			record:      `{"data":{"user":{"_id":"u3"}}}`,
			want:        "u3",
		},
		{
			description: "top level user preferred",
			record:      `{"user":{"_id":"top"},"data":{"user":{"_id":"nested"}}}`,
			want:        "top",
		},
		{
			description: "recurses below data",
			record:      `{"data":{"data":{"user":{"id":"deep"}}}}`,
			want:        "deep",
		},
		{
			description: "non string _id skips candidate",
			record:      `{"user":{"_id":7},"data":{"user":{"_id":"u4"}}}`,
			want:        "u4",
		},
		{
			description: "no user",
			record:      `{"accessToken":"abc"}`,
			want:        "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.want, ExtractUserID(decode(t, testCase.record)))
		})
	}
}

func TestExtractFromNil(t *testing.T) {
	assert.Empty(t, ExtractToken(nil))
	assert.Empty(t, ExtractUserID(nil))
}
