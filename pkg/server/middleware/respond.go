/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/maktaba/maktaba/pkg/server/log"
	"github.com/maktaba/maktaba/pkg/server/messages"
	"github.com/maktaba/maktaba/pkg/server/presenters"
	"golang.org/x/text/language"
)

// WriteError responds with a failed envelope carrying the localized message
// for the given key
func WriteError(w http.ResponseWriter, r *http.Request, fallback language.Tag, status int, key string) {
	p := messages.NewPrinter(messages.Match(r.Header.Get("Accept-Language"), fallback))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(presenters.Envelope{
		Success: false,
		Message: p.Sprintf(key),
	}); err != nil {
		log.ErrorWrap(err, "encoding error response")
	}
}
