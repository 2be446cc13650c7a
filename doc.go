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

/*
Package cmap provides a lightweight client for the Simons Collaborative Marine
Atlas Project (CMAP) data service.

# Client

Use NewClient to create a client. This is the major entrance to every accessor:

	client, err := cmap.NewClient(cmap.NewConfig("<api-key>"))
	if err != nil {
		return err
	}
	defer client.Close()

When the key is not passed explicitly, it can be loaded from a KeyStore:

	store, _ := cmap.NewFileKeyStore()
	client, err := cmap.NewClient(&cmap.Config{
		KeyStore:  store,
		KeyPrefix: cmap.DefaultKeyPrefix,
		BaseURL:   cmap.DefaultBaseURL,
	})

# Query Data

Every accessor renders a Statement and sends it to the query endpoint:

	rs, err := client.SpaceTime(ctx, cmap.SpaceTime{
		Table:    "tblArgoMerge_REP",
		Variable: "argo_merge_salinity_adj",
		Dt1:      "2015-05-01",
		Dt2:      "2015-05-30",
		Lat1:     28.1, Lat2: 35.4,
		Lon1:     -71.3, Lon2: -50,
		Depth1:   0, Depth2: 100,
	})

Custom statements bind their arguments through placeholders:

	rs, err := client.Execute(ctx, cmap.NewStatement(
		"SELECT * FROM tblVariables WHERE Table_Name = ?", table))

Floating point arguments are sent in their shortest decimal form, never in
exponent notation. Integer-valued floats carry no decimal point, so a
longitude of -180.0 is sent as -180.

# Result Sets

A ResultSet holds the typed rows of a response. Use ToValues for the raw
cells, ToArrowBatch for an Arrow record, and Render for a text table.
*/
package cmap
