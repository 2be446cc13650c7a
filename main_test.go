/*
 * Copyright 2026 The CMAP SDK Authors.
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

package cmap_test

import (
	"io"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"

	cmap "github.com/simonscmap/cmap-sdk/go"
	"github.com/simonscmap/cmap-sdk/go/internal/cmaptest"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

// NewStub starts a fake CMAP server and a client bound to it. Both are
// closed when the test ends.
func NewStub(t testing.TB) (*cmaptest.Server, *cmap.Client) {
	srv := cmaptest.NewServer()
	config := srv.Config()
	config.Logger = pterm.DefaultLogger.WithWriter(io.Discard)
	c, err := cmap.NewClient(config)
	require.NoError(t, err)
	t.Cleanup(func() {
		c.Close()
		srv.Close()
	})
	return srv, c
}

// Echoed returns the statement echoed back by the fake server.
func Echoed(t testing.TB, rs *cmap.ResultSet) string {
	require.Equal(t, 1, rs.NumRows())
	q, err := rs.Text(0, cmaptest.EchoColumn)
	require.NoError(t, err)
	return q
}
