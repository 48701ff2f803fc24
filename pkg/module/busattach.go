// Copyright QSoC Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package module

import (
	"fmt"

	"github.com/vowstar/qsocgo/pkg/bus"
	"github.com/vowstar/qsocgo/pkg/weaver"
)

const (
	clusterMinLen    = 3
	clusterThreshold = 2
)

// AddModuleBus attaches a bus-interface stanza to module by computing a
// bus-signal -> module-port mapping (spec.md §4.C "Bus attachment"). No
// module port or source is modified: only the `bus.<interfaceName>` stanza
// is added.
func (c *Catalog) AddModuleBus(busCatalog *bus.Catalog, moduleName, busName, mode, interfaceName string) error {
	def, ok := c.Get(moduleName)
	if !ok {
		return fmt.Errorf("module not found: %s", moduleName)
	}

	busDef, ok := busCatalog.Get(busName)
	if !ok {
		return fmt.Errorf("bus not found: %s", busName)
	}

	ports := def.PortNames()
	signals := busDef.SignalNames()

	candidates := weaver.CandidateSubstrings(ports, clusterMinLen, clusterThreshold)
	clusters := weaver.Cluster(ports, candidates)

	markers := make([]string, 0, len(clusters))
	for marker := range clusters {
		markers = append(markers, marker)
	}

	bestMarker := weaver.BestHintMarker(interfaceName, markers)

	clusterPorts := clusters[bestMarker]
	if len(clusterPorts) == 0 {
		clusterPorts = ports
	}

	matching := weaver.OptimalMatching(clusterPorts, signals, bestMarker)

	mapping := make(map[string]BusSignalMapping, len(matching))
	for signal, port := range matching {
		mapping[signal] = BusSignalMapping{Port: port}
	}

	if def.Bus == nil {
		def.Bus = make(map[string]BusInterface)
	}

	def.Bus[interfaceName] = BusInterface{Bus: busName, Mode: mode, Mapping: mapping}

	return nil
}
