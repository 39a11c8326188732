// Package scene is the render root: named nodes carrying a mesh and a pose.
package scene

import (
	"sync"

	"github.com/pkg/errors"

	"mocap-viewer/internal/mesh"
	"mocap-viewer/internal/orient"
)

// Renderer accepts pose commands for named objects.
type Renderer interface {
	SetPose(name string, p orient.Pose) error
	SetVisible(name string, visible bool) error
}

// Node is one object in the scene.
type Node struct {
	Name    string
	Mesh    *mesh.Mesh
	Pose    orient.Pose
	Visible bool
}

// NodeState is a copy of a node taken by Snapshot.
type NodeState struct {
	Name    string
	Mesh    *mesh.Mesh
	Pose    orient.Pose
	Visible bool
}

// Scene holds nodes in attach order. It is safe for concurrent use.
type Scene struct {
	mu    sync.RWMutex
	order []*Node
	nodes map[string]*Node
}

var _ Renderer = (*Scene)(nil)

// New returns an empty scene.
func New() *Scene {
	return &Scene{nodes: make(map[string]*Node)}
}

// Attach adds a visible node at the identity pose.
func (s *Scene) Attach(name string, m *mesh.Mesh) (*Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nodes[name]; exists {
		return nil, errors.Errorf("scene: node %q already attached", name)
	}
	n := &Node{Name: name, Mesh: m, Visible: true}
	s.nodes[name] = n
	s.order = append(s.order, n)
	return n, nil
}

// SetPose moves a node.
func (s *Scene) SetPose(name string, p orient.Pose) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[name]
	if !ok {
		return errors.Errorf("scene: unknown node %q", name)
	}
	n.Pose = p
	return nil
}

// SetVisible shows or hides a node.
func (s *Scene) SetVisible(name string, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[name]
	if !ok {
		return errors.Errorf("scene: unknown node %q", name)
	}
	n.Visible = visible
	return nil
}

// Node returns a copy of the named node.
func (s *Scene) Node(name string) (NodeState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[name]
	if !ok {
		return NodeState{}, false
	}
	return NodeState(*n), true
}

// Len returns the number of nodes.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Snapshot copies every node's state in attach order. The result can be
// rendered while the scene keeps changing.
func (s *Scene) Snapshot() []NodeState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]NodeState, len(s.order))
	for i, n := range s.order {
		out[i] = NodeState(*n)
	}
	return out
}
