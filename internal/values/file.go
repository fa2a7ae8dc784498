/*
File    : gomix-pseudo/internal/values/file.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package values

import (
	"os"
	"strings"
)

// File is the runtime value returned by the open/newFile builtins. It
// tracks an in-memory line cursor for readLine, and buffers writeLine
// calls until close flushes them in one write. A File dropped without
// calling close() loses its pending writes.
type File struct {
	Path      string
	ReadLines []string // remaining unread lines, front is next readLine()
	Pending   []string // buffered writeLine() calls, flushed at close()
	closed    bool
}

func (f *File) Kind() Kind     { return FileKind }
func (f *File) String() string { return "<file: " + f.Path + ">" }

// OpenFile opens an existing file for reading, loading its lines eagerly
// so readLine can pop from the front. Returns an error if the file does
// not exist or cannot be read.
func OpenFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ValueError{Msg: "could not open file '" + path + "': " + err.Error()}
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(data) == 0 {
		lines = nil
	}
	return &File{Path: path, ReadLines: lines}, nil
}

// NewFile creates (truncating if it already exists) an empty file ready
// for writeLine calls.
func NewFile(path string) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &ValueError{Msg: "could not create file '" + path + "': " + err.Error()}
	}
	f.Close()
	return &File{Path: path}, nil
}

// FileMethods dispatches File.method(args...) calls.
var FileMethods = map[string]func(f *File, args []Value) (Value, error){
	"readLine": func(f *File, _ []Value) (Value, error) {
		if len(f.ReadLines) == 0 {
			return nil, &EOFError{Msg: "no more lines in '" + f.Path + "'"}
		}
		line := f.ReadLines[0]
		f.ReadLines = f.ReadLines[1:]
		return &String{Value: line}, nil
	},
	"writeLine": func(f *File, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, &ValueError{Msg: "writeLine expects 1 argument"}
		}
		s, ok := args[0].(*String)
		if !ok {
			return nil, &TypeError{Op: "writeLine", Got: string(args[0].Kind())}
		}
		f.Pending = append(f.Pending, s.Value)
		return Null{}, nil
	},
	"readFile": func(f *File, _ []Value) (Value, error) {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, &ValueError{Msg: err.Error()}
		}
		return &String{Value: string(data)}, nil
	},
	"writeFile": func(f *File, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, &ValueError{Msg: "writeFile expects 1 argument"}
		}
		s, ok := args[0].(*String)
		if !ok {
			return nil, &TypeError{Op: "writeFile", Got: string(args[0].Kind())}
		}
		if err := os.WriteFile(f.Path, []byte(s.Value), 0644); err != nil {
			return nil, &ValueError{Msg: err.Error()}
		}
		return Null{}, nil
	},
	"close": func(f *File, _ []Value) (Value, error) {
		if f.closed {
			return Null{}, nil
		}
		if len(f.Pending) > 0 {
			if err := os.WriteFile(f.Path, []byte(strings.Join(f.Pending, "\n")), 0644); err != nil {
				return nil, &ValueError{Msg: err.Error()}
			}
		}
		f.closed = true
		return Null{}, nil
	},
}
