package gason

import "testing"

func TestDocument_Count(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{`[]`, 0},
		{`[1]`, 1},
		{`[1,2,3,4]`, 4},
		{`{}`, 0},
		{`{"a":1,"b":2}`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			doc := parseOK(t, tt.src)
			if got := doc.Count(doc.Root()); got != tt.want {
				t.Errorf("Count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDocument_NodeChain(t *testing.T) {
	doc := parseOK(t, `["a","b","c"]`)
	var got []string
	for n := doc.Head(doc.Root()); n != nil; n = n.Next() {
		if k := doc.Key(n); k != nil {
			t.Errorf("array element node has key %q", k)
		}
		got = append(got, doc.StrString(n.Value()))
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("chain = %v", got)
	}
}

func TestDocument_EmptyHead(t *testing.T) {
	doc := parseOK(t, `[]`)
	if doc.Head(doc.Root()) != nil {
		t.Error("empty array has a head node")
	}
}

// Breaking out of an iterator must not disturb the chain.
func TestDocument_IteratorEarlyBreak(t *testing.T) {
	doc := parseOK(t, `[1,2,3]`)
	for v := range doc.Elems(doc.Root()) {
		if v.Number() == 1 {
			break
		}
	}
	if got := doc.Count(doc.Root()); got != 3 {
		t.Errorf("Count after early break = %d, want 3", got)
	}

	obj := parseOK(t, `{"a":1,"b":2}`)
	seen := 0
	for range obj.Members(obj.Root()) {
		seen++
		break
	}
	if seen != 1 {
		t.Errorf("yielded %d members before break", seen)
	}
}

// A container value only resolves against the document that produced
// it; walking it through another document's arena is caught in checked
// builds when the stray handle lands on an element node.
func TestDocument_ForeignValueCaught(t *testing.T) {
	arr := parseOK(t, `[1,2,3]`)
	obj := parseOK(t, `{"a":1,"b":2}`)
	mustPanic(t, "foreign object value", func() {
		for range arr.Members(obj.Root()) {
		}
	})
}

func TestDocument_Buffer(t *testing.T) {
	buf := []byte(`{"k":"v"}`)
	doc, err := Parse(buf, new(Arena))
	if err != nil {
		t.Fatal(err)
	}
	if &doc.Buffer()[0] != &buf[0] {
		t.Error("Buffer() is not the caller's buffer")
	}
}
