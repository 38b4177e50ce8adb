package mocks

import (
	"reflect"

	"github.com/stretchr/testify/mock"
)

type ClassLister struct {
	mock.Mock
}

func (_m *ClassLister) List(path string) ([]reflect.Type, error) {
	ret := _m.Called(path)

	var r0 []reflect.Type
	if rf, ok := ret.Get(0).(func(string) []reflect.Type); ok {
		r0 = rf(path)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]reflect.Type)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(string) error); ok {
		r1 = rf(path)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
func (_m *ClassLister) Lookup(name string) (reflect.Type, bool) {
	ret := _m.Called(name)

	var r0 reflect.Type
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(reflect.Type)
	}

	return r0, ret.Bool(1)
}

type Runtime struct {
	mock.Mock
}

func (_m *Runtime) New(class reflect.Type) (reflect.Value, error) {
	ret := _m.Called(class)

	var r0 reflect.Value
	if rf, ok := ret.Get(0).(func(reflect.Type) reflect.Value); ok {
		r0 = rf(class)
	} else {
		r0 = ret.Get(0).(reflect.Value)
	}

	return r0, ret.Error(1)
}

type Sink struct {
	mock.Mock
}

func (_m *Sink) True(cond bool, msg string) bool {
	ret := _m.Called(cond, msg)

	return ret.Bool(0)
}
func (_m *Sink) Equal(expected interface{}, actual interface{}, msg string) bool {
	ret := _m.Called(expected, actual, msg)

	return ret.Bool(0)
}
