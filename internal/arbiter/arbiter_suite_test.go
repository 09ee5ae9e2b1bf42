package arbiter_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestArbiter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Arbiter Suite")
}
