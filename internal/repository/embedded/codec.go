package embedded

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	// RFC3339Nano keeps sub-second precision; the default unix encoding drops it
	encMode, err = cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor enc mode: %v", err))
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("cbor dec mode: %v", err))
	}
}

func encode(v interface{}) ([]byte, error) {
	return encMode.Marshal(v)
}

func decode(data []byte, v interface{}) error {
	return decMode.Unmarshal(data, v)
}
