package mocks

import (
	"io"

	"github.com/brettbedarf/roottools"
	"github.com/stretchr/testify/mock"
)

// MockFileOps implements roottools.FileOps for testing across packages
type MockFileOps struct {
	mock.Mock
}

func (m *MockFileOps) Lstat(path string) (*roottools.Status, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*roottools.Status), args.Error(1)
}

func (m *MockFileOps) ReadDirNames(path string) ([]string, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFileOps) Lchown(path string, uid, gid int) error {
	return m.Called(path, uid, gid).Error(0)
}

func (m *MockFileOps) Mkdir(path string, perm uint32) error {
	return m.Called(path, perm).Error(0)
}

func (m *MockFileOps) Rmdir(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockFileOps) Unlink(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockFileOps) Readlink(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

func (m *MockFileOps) Open(path string) (io.ReadCloser, error) {
	args := m.Called(path)

	// Handle function return types so each call can get a fresh reader
	if fn, ok := args.Get(0).(func(string) io.ReadCloser); ok {
		return fn(path), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockFileOps) Create(path string, perm uint32) (io.WriteCloser, error) {
	args := m.Called(path, perm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

// MockAction implements roottools.Action and records every visit
type MockAction struct {
	mock.Mock
}

func (m *MockAction) Visit(v *roottools.Visit) error {
	return m.Called(v).Error(0)
}

var (
	_ roottools.FileOps = (*MockFileOps)(nil)
	_ roottools.Action  = (*MockAction)(nil)
)
