package backbone

import "unsafe"

// PageSize is the fixed page granularity the backbone carves the region
// into. A compile-time tunable, per spec's external-interfaces contract.
const PageSize = 4096

const align16 = 16

func alignUp(x, n uintptr) uintptr {
	return (x + n - 1) &^ (n - 1)
}

// layout describes the byte offsets of the three regions carved out of a
// caller-supplied buffer: [header | pad16 | records[] | pad(PageSize) |
// pages[]]. It mirrors the reference implementation's two-pass padding
// computation: the first pass's page count is only a tentative upper
// bound, because rounding the metadata array up to a 16-byte boundary
// and the page store up to a page boundary can each eat into the space
// left over for pages, so the page count must be re-derived afterwards.
type layout struct {
	metadataOffset uintptr
	pagesOffset    uintptr
	pageCount      int
}

func computeLayout(size uintptr) layout {
	headerSize := unsafe.Sizeof(Header{})
	recordSize := unsafe.Sizeof(Record{})

	if size <= headerSize {
		return layout{}
	}

	// Tentative page count, before alignment padding is accounted for.
	tentative := (size - headerSize) / (recordSize + PageSize)

	metadataOffset := alignUp(headerSize, align16)
	pagesOffsetTentative := metadataOffset + tentative*recordSize
	pagesOffset := alignUp(pagesOffsetTentative, PageSize)

	if pagesOffset >= size {
		return layout{metadataOffset: metadataOffset, pagesOffset: pagesOffset, pageCount: 0}
	}

	spaceLeft := size - pagesOffset
	pageCount := int(spaceLeft / PageSize)
	if pageCount > int(tentative) {
		// Only tentative records fit before pagesOffset.
		pageCount = int(tentative)
	}

	return layout{
		metadataOffset: metadataOffset,
		pagesOffset:    pagesOffset,
		pageCount:      pageCount,
	}
}
