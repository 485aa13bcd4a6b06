package snapshot

import (
	"fmt"

	"github.com/bjaus/glinfo"
)

type system struct {
	driverControl bool
	screens       []*target
	gpus          []*target
	closed        bool
}

func (s *system) wrap(targets []Target) []*target {
	out := make([]*target, len(targets))
	for i := range targets {
		out[i] = &target{sys: s, spec: &targets[i]}
	}
	return out
}

func (s *system) DriverControl() bool { return s.driverControl }

func (s *system) Targets(class glinfo.TargetClass) []glinfo.Target {
	if s.closed {
		return nil
	}
	var src []*target
	switch class {
	case glinfo.ScreenTarget:
		src = s.screens
	case glinfo.GPUTarget:
		src = s.gpus
	}
	out := make([]glinfo.Target, len(src))
	for i, t := range src {
		out[i] = t
	}
	return out
}

func (s *system) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return nil
}

// target serves one snapshot Target until it is released.
type target struct {
	sys      *system
	spec     *Target
	released bool
}

func (t *target) Name() string { return t.spec.Name }

func (t *target) Valid() bool { return !t.spec.NoHandle }

func (t *target) QueryString(attr glinfo.StringAttribute) (string, error) {
	if err := t.check(attr.String()); err != nil {
		return "", err
	}
	v, ok := t.spec.Strings[attr.String()]
	if !ok {
		return "", &glinfo.StatusError{Status: glinfo.StatusNotApplicable}
	}
	return v, nil
}

func (t *target) QueryFBConfigs() ([]glinfo.FBConfig, error) {
	if err := t.check(glinfo.FBConfigsAttribute); err != nil {
		return nil, err
	}
	if t.spec.FBConfigs == nil {
		return nil, &glinfo.StatusError{Status: glinfo.StatusNotApplicable}
	}
	return append([]glinfo.FBConfig{}, t.spec.FBConfigs...), nil
}

func (t *target) QueryEGLConfigs() ([]glinfo.EGLConfig, error) {
	if err := t.check(glinfo.EGLConfigsAttribute); err != nil {
		return nil, err
	}
	if t.spec.EGLConfigs == nil {
		return nil, &glinfo.StatusError{Status: glinfo.StatusNotApplicable}
	}
	return append([]glinfo.EGLConfig{}, t.spec.EGLConfigs...), nil
}

// Release marks the target's buffers released. Releasing twice is an error.
func (t *target) Release() error {
	if t.released {
		return fmt.Errorf("%s: %w", t.spec.Name, ErrReleased)
	}
	t.released = true
	return nil
}

// check reports use after release or close, then any configured failure for
// attr.
func (t *target) check(attr string) error {
	switch {
	case t.released:
		return fmt.Errorf("%s: %w", t.spec.Name, ErrReleased)
	case t.sys.closed:
		return ErrClosed
	}
	if name, ok := t.spec.Errors[attr]; ok {
		status, err := glinfo.ParseStatus(name)
		if err != nil {
			return err
		}
		return &glinfo.StatusError{Status: status}
	}
	return nil
}
