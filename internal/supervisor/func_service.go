// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package supervisor

import "context"

// FuncService adapts a plain `func(context.Context) error` (the shape
// of Hub.Run and the audit follower's blocking loop) to suture.Service,
// for components that are too small to warrant their own named type.
type FuncService struct {
	name string
	run  func(context.Context) error
}

// NewFuncService wraps run under name for supervision.
func NewFuncService(name string, run func(context.Context) error) *FuncService {
	return &FuncService{name: name, run: run}
}

// Serve implements suture.Service.
func (s *FuncService) Serve(ctx context.Context) error {
	return s.run(ctx)
}

// String implements fmt.Stringer for suture's logging.
func (s *FuncService) String() string {
	return s.name
}
