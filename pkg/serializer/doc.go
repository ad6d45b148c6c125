// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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


// Package serializer renders inventory data as JSON, YAML or a table, and
// reads JSON or YAML documents back.
//
// Destinations for Writer output:
//
//	""                      stdout
//	/path/to/file           local file (created or truncated)
//	cm://namespace/name     Kubernetes ConfigMap, applied server side
//
// Sources accepted by FromFile:
//
//	/path/to/file.{json,yaml,yml}
//	http(s)://host/path.{json,yaml}
//	cm://namespace/name
//
// Values that implement Table are rendered as rows in table format; other
// values are flattened into FIELD/VALUE pairs.
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatTable, "")
//	defer w.Close()
//	if err := w.Serialize(ctx, records); err != nil {
//	    return err
//	}
//
// HTTP handlers use RespondJSON, which encodes the body before writing the
// status so an encoding failure never yields a partial response.
package serializer
