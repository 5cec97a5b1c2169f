package project

import (
	"path"
	"strings"

	"github.com/hupe1980/pbxgen/internal/manifest"
)

// fileTypes maps lower-case extensions to Xcode file types.
var fileTypes = map[string]string{
	".swift":        "sourcecode.swift",
	".m":            "sourcecode.c.objc",
	".mm":           "sourcecode.cpp.objcpp",
	".c":            "sourcecode.c.c",
	".cc":           "sourcecode.cpp.cpp",
	".cpp":          "sourcecode.cpp.cpp",
	".h":            "sourcecode.c.h",
	".hpp":          "sourcecode.cpp.h",
	".metal":        "sourcecode.metal",
	".plist":        "text.plist.xml",
	".strings":      "text.plist.strings",
	".json":         "text.json",
	".md":           "net.daringfireball.markdown",
	".storyboard":   "file.storyboard",
	".xib":          "file.xib",
	".xcassets":     "folder.assetcatalog",
	".xcconfig":     "text.xcconfig",
	".framework":    "wrapper.framework",
	".xcframework":  "wrapper.xcframework",
	".a":            "archive.ar",
	".dylib":        "compiled.mach-o.dylib",
	".tbd":          "sourcecode.text-based-dylib-definition",
	".png":          "image.png",
	".jpg":          "image.jpeg",
	".entitlements": "text.plist.entitlements",
	".xcdatamodeld": "wrapper.xcdatamodeld",
}

// FileTypeFor returns the Xcode file type for p, or "file" when the
// extension is unknown.
func FileTypeFor(p string) string {
	if t, ok := fileTypes[strings.ToLower(path.Ext(p))]; ok {
		return t
	}

	return "file"
}

// ProductInfo describes how a target type is built and named.
type ProductInfo struct {
	ProductType  string
	FileType     string
	NameTemplate string // %s is replaced by the product name
}

// FileName returns the product file name for productName.
func (pi ProductInfo) FileName(productName string) string {
	return strings.ReplaceAll(pi.NameTemplate, "%s", productName)
}

// Linkable reports whether other targets link against this product.
func (pi ProductInfo) Linkable() bool {
	switch pi.ProductType {
	case productTypeFramework, productTypeStaticLibrary, productTypeDynamicLibrary:
		return true
	default:
		return false
	}
}

const (
	productTypeFramework      = "com.apple.product-type.framework"
	productTypeStaticLibrary  = "com.apple.product-type.library.static"
	productTypeDynamicLibrary = "com.apple.product-type.library.dynamic"
)

var productInfos = map[string]ProductInfo{
	manifest.TypeApplication:    {"com.apple.product-type.application", "wrapper.application", "%s.app"},
	manifest.TypeFramework:      {productTypeFramework, "wrapper.framework", "%s.framework"},
	manifest.TypeStaticLibrary:  {productTypeStaticLibrary, "archive.ar", "lib%s.a"},
	manifest.TypeDynamicLibrary: {productTypeDynamicLibrary, "compiled.mach-o.dylib", "lib%s.dylib"},
	manifest.TypeUnitTest:       {"com.apple.product-type.bundle.unit-test", "wrapper.cfbundle", "%s.xctest"},
	manifest.TypeUITest:         {"com.apple.product-type.bundle.ui-testing", "wrapper.cfbundle", "%s.xctest"},
	manifest.TypeTool:           {"com.apple.product-type.tool", "compiled.mach-o.executable", "%s"},
	manifest.TypeBundle:         {"com.apple.product-type.bundle", "wrapper.cfbundle", "%s.bundle"},
}

// ProductInfoFor returns the product description of a manifest target type.
func ProductInfoFor(targetType string) (ProductInfo, bool) {
	pi, ok := productInfos[targetType]

	return pi, ok
}
