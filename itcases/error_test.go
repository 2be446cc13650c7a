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

package itcases

import (
	"context"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	cmap "github.com/simonscmap/cmap-sdk/go"
)

func TestBadKeyFail(t *testing.T) {
	c := NewClient(t)
	c.Close()

	config := cmap.NewConfig("not-a-key")
	if baseURL := os.Getenv("CMAP_BASE_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}
	bad, err := cmap.NewClient(config)
	require.NoError(t, err)
	defer bad.Close()

	_, err = bad.Datasets(context.Background())
	require.ErrorIs(t, err, cmap.ErrUnauthorized)
	snaps.MatchSnapshot(t, err.Error())
}

func TestUnknownCruiseFail(t *testing.T) {
	c := NewClient(t)
	defer c.Close()

	name := RandomName(t)
	_, err := c.CruiseByName(context.Background(), name)
	require.ErrorIs(t, err, cmap.ErrInvalidName)
}

func TestUnknownTableFail(t *testing.T) {
	c := NewClient(t)
	defer c.Close()

	_, err := c.DatasetID(context.Background(), RandomName(t))
	require.ErrorIs(t, err, cmap.ErrInvalidName)
}
