package sourceafis

import "github.com/fxamacker/cbor/v2"

const cborMime = "application/cbor"

var cborEncoder = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()
