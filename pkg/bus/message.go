// Copyright Consensys Software Inc.
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
package bus

import "fmt"

// Kind distinguishes the two directions of a bus interaction.
type Kind uint8

const (
	// SEND registers supply of an (address,value) pair.
	SEND Kind = iota
	// RECEIVE registers demand for an (address,value) pair.
	RECEIVE
)

func (k Kind) String() string {
	switch k {
	case SEND:
		return "send"
	case RECEIVE:
		return "receive"
	}
	//
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Message is a single interaction with the memory bus.  The address tags a
// memory cell, and the multiplicity weights the interaction.  Messages are
// parameterised over the value type V, which can be a concrete field element
// (when checking a trace) or a symbolic term (when describing constraints).
type Message[V any] struct {
	Address      V
	Value        V
	Multiplicity V
}

// NewMessage constructs a new message.
func NewMessage[V any](address, value, multiplicity V) Message[V] {
	return Message[V]{address, value, multiplicity}
}

// Sink receives the bus interactions emitted by a chip.  How interactions are
// ultimately balanced is the responsibility of the sink.
type Sink[V any] interface {
	// Send registers supply of the given message, weighted by its
	// multiplicity.
	Send(msg Message[V])
	// Receive registers demand for the given message, weighted by its
	// multiplicity.
	Receive(msg Message[V])
}

// Interaction pairs a message with the direction in which it was emitted.
type Interaction[V any] struct {
	Kind    Kind
	Message Message[V]
}

// Recorder is a sink which simply records every interaction in the order they
// were emitted.
type Recorder[V any] struct {
	Interactions []Interaction[V]
}

// Send implementation for the Sink interface.
func (p *Recorder[V]) Send(msg Message[V]) {
	p.Interactions = append(p.Interactions, Interaction[V]{SEND, msg})
}

// Receive implementation for the Sink interface.
func (p *Recorder[V]) Receive(msg Message[V]) {
	p.Interactions = append(p.Interactions, Interaction[V]{RECEIVE, msg})
}
