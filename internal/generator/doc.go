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

// Package generator defines the contract between the assistant and a text
// generation service: the request assembled from a business's stored state
// and the structured posts a service returns.
//
// No generation service lives in this package. Implementations satisfy
// Generator elsewhere and receive a Request that has already been validated.
//
// A Request is built with NewRequest from a state.Business:
//
//	req, err := generator.NewRequest(biz, generator.Options{
//		DescriptionTitle: "About",
//		ProfileURL:       "https://www.instagram.com/acme/",
//		Month:            time.March,
//		Labels:           table,
//		Total:            &total,
//		Counts:           counts,
//	})
//
// The category counts are reconciled to the total with the balance package
// before validation, the same way the interactive sliders are.
package generator
