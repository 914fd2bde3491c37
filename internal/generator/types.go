// Copyright 2025 The marketing-sm Authors
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package generator

import (
	"context"
	"strings"

	"github.com/OS-joaocastilho/marketing-sm/internal/balance"
	"github.com/OS-joaocastilho/marketing-sm/internal/locale"
)

// ContentType is the format chosen for a post.
type ContentType string

const (
	ContentReel     ContentType = "reel"
	ContentImage    ContentType = "image"
	ContentCarousel ContentType = "carousel"
)

// Generator produces a month of posts for a request.
type Generator interface {
	Generate(ctx context.Context, req *Request) (*Result, error)
}

// Request carries everything a generation service needs about one business.
type Request struct {
	Business    string         `json:"business" validate:"required"`
	Description string         `json:"business_description" validate:"required"`
	Examples    string         `json:"business_examples"`
	Suggestions string         `json:"suggestions"`
	Month       string         `json:"month" validate:"required"`
	TotalPosts  int            `json:"total_posts" validate:"gte=1,lte=12"`
	Counts      balance.Counts `json:"counts"`
	Colors      []string       `json:"colors" validate:"max=6,dive,iscolor"`
	Model       *Model         `json:"model,omitempty"`
}

// Model names the hosted text model a generator should call.
type Model struct {
	Project   string `json:"project,omitempty"`
	Location  string `json:"location" validate:"required"`
	TextModel string `json:"text_model" validate:"required"`
}

// Post is one generated post. CaptionImage holds the text placed on each
// image and PromptImage the background prompt for each image; reels carry
// no image prompts.
type Post struct {
	ContentType  ContentType `json:"content_type" validate:"required,oneof=reel image carousel"`
	CaptionImage []string    `json:"caption_image"`
	PostCaption  string      `json:"post_caption" validate:"required"`
	PromptImage  []string    `json:"prompt_image"`
	Images       []string    `json:"images,omitempty"`
}

// Result is the generator's answer to a Request.
type Result struct {
	Posts []Post `json:"posts" validate:"dive"`
}

// Text renders the post the way it is shown to the user: the caption and
// the image prompts under the locale's post template.
func (p Post) Text(t *locale.Table) string {
	return t.FormatPost(p.PostCaption, strings.Join(p.PromptImage, "\n"))
}

// ImageCaptions pairs every rendered image with its caption. Images without
// a caption get an empty one.
func (p Post) ImageCaptions() [][2]string {
	out := make([][2]string, len(p.Images))
	for i, img := range p.Images {
		out[i][0] = img
		if i < len(p.CaptionImage) {
			out[i][1] = p.CaptionImage[i]
		}
	}
	return out
}
