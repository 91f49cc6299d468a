package addonsync_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestAddonSync(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AddonSync Suite")
}
