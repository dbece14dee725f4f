package havjson

import (
	"strings"
	"sync"
)

// stringBuilderPool reuses strings.Builder instances across Text
// Writer invocations, avoiding an allocation per ToText call under
// heavy use. Grounded on the teacher's own stringBuilderPool in
// loose.go.
var stringBuilderPool = sync.Pool{
	New: func() any { return &strings.Builder{} },
}

func getPooledBuilder() *strings.Builder {
	return stringBuilderPool.Get().(*strings.Builder)
}

func putPooledBuilder(sb *strings.Builder) {
	sb.Reset()
	stringBuilderPool.Put(sb)
}
