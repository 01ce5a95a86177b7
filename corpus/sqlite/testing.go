// Copyright 2025 Kaiser Guy
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package sqlite

import (
	"fmt"
	"sync/atomic"
)

var memStoreSeq atomic.Int64

// NewMemoryStore creates an in-memory corpus store for testing.
// Each call returns an independent database. Caller must close the store
// when done.
func NewMemoryStore() (*Store, error) {
	// A named shared-cache memory database keeps the contents alive across
	// the connections of database/sql's pool.
	name := fmt.Sprintf("file:corpus-mem-%d?mode=memory&cache=shared", memStoreSeq.Add(1))
	store, err := newStore(name, "")
	if err != nil {
		return nil, err
	}
	// Shared-cache memory databases disappear when the last connection
	// closes; pinning one connection open keeps the data alive.
	store.db.SetMaxIdleConns(1)
	return store, nil
}
