// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// XML namespaces used in PPTX files.
const (
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels    = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCoreProps      = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
)

// Relationship types.
const (
	relOfficeDocument = nsRelationships + "/officeDocument"
	relCoreProps      = nsPackageRels + "/metadata/core-properties"
	relExtendedProps  = nsRelationships + "/extended-properties"
	relSlideMaster    = nsRelationships + "/slideMaster"
	relSlideLayout    = nsRelationships + "/slideLayout"
	relSlide          = nsRelationships + "/slide"
	relTheme          = nsRelationships + "/theme"
	relImage          = nsRelationships + "/image"
)

// Content types.
const (
	ctRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ctPresentation  = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlideMaster   = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout   = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctSlide         = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctTheme         = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctCoreProps     = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtendedProps = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// firstSlideID is the lowest id PowerPoint accepts in sldIdLst.
const firstSlideID = 256

// --- [Content_Types].xml ---

type contentTypesXML struct {
	XMLName   xml.Name      `xml:"Types"`
	Xmlns     string        `xml:"xmlns,attr"`
	Defaults  []defaultXML  `xml:"Default"`
	Overrides []overrideXML `xml:"Override"`
}

type defaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func (p *Presentation) contentTypes(media [][]mediaPart) contentTypesXML {
	ct := contentTypesXML{
		Xmlns: nsContentTypes,
		Defaults: []defaultXML{
			{Extension: "rels", ContentType: ctRelationships},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []overrideXML{
			{PartName: "/ppt/presentation.xml", ContentType: ctPresentation},
			{PartName: "/ppt/slideMasters/slideMaster1.xml", ContentType: ctSlideMaster},
			{PartName: "/ppt/slideLayouts/slideLayout1.xml", ContentType: ctSlideLayout},
			{PartName: "/ppt/theme/theme1.xml", ContentType: ctTheme},
			{PartName: "/docProps/core.xml", ContentType: ctCoreProps},
			{PartName: "/docProps/app.xml", ContentType: ctExtendedProps},
		},
	}
	for i := range p.slides {
		ct.Overrides = append(ct.Overrides, overrideXML{
			PartName:    fmt.Sprintf("/ppt/slides/slide%d.xml", i+1),
			ContentType: ctSlide,
		})
	}

	exts := map[string]string{}
	for _, parts := range media {
		for _, m := range parts {
			typ, _ := mediaContentType(m.name)
			exts[strings.TrimPrefix(filepath.Ext(m.name), ".")] = typ
		}
	}
	keys := make([]string, 0, len(exts))
	for k := range exts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ct.Defaults = append(ct.Defaults, defaultXML{Extension: k, ContentType: exts[k]})
	}
	return ct
}

// --- relationships ---

type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

func rels(r ...relationshipXML) relationshipsXML {
	return relationshipsXML{Xmlns: nsPackageRels, Relationships: r}
}

func packageRels() relationshipsXML {
	return rels(
		relationshipXML{ID: "rId1", Type: relOfficeDocument, Target: "ppt/presentation.xml"},
		relationshipXML{ID: "rId2", Type: relCoreProps, Target: "docProps/core.xml"},
		relationshipXML{ID: "rId3", Type: relExtendedProps, Target: "docProps/app.xml"},
	)
}

// Presentation relationships: rId1 master, rId2 theme, rId3.. slides.
func (p *Presentation) presentationRels() relationshipsXML {
	r := rels(
		relationshipXML{ID: "rId1", Type: relSlideMaster, Target: "slideMasters/slideMaster1.xml"},
		relationshipXML{ID: "rId2", Type: relTheme, Target: "theme/theme1.xml"},
	)
	for i := range p.slides {
		r.Relationships = append(r.Relationships, relationshipXML{
			ID:     slideRelID(i),
			Type:   relSlide,
			Target: fmt.Sprintf("slides/slide%d.xml", i+1),
		})
	}
	return r
}

func slideRelID(i int) string {
	return fmt.Sprintf("rId%d", i+3)
}

func slideMasterRels() relationshipsXML {
	return rels(
		relationshipXML{ID: "rId1", Type: relSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
		relationshipXML{ID: "rId2", Type: relTheme, Target: "../theme/theme1.xml"},
	)
}

func slideLayoutRels() relationshipsXML {
	return rels(
		relationshipXML{ID: "rId1", Type: relSlideMaster, Target: "../slideMasters/slideMaster1.xml"},
	)
}

func slideRels(media []mediaPart) relationshipsXML {
	r := rels(relationshipXML{ID: "rId1", Type: relSlideLayout, Target: "../slideLayouts/slideLayout1.xml"})
	for _, m := range media {
		r.Relationships = append(r.Relationships, relationshipXML{
			ID:     m.relID,
			Type:   relImage,
			Target: "../media/" + m.name,
		})
	}
	return r
}

// --- docProps ---

type corePropsXML struct {
	XMLName  xml.Name    `xml:"cp:coreProperties"`
	XmlnsCP  string      `xml:"xmlns:cp,attr"`
	XmlnsDC  string      `xml:"xmlns:dc,attr"`
	XmlnsDCT string      `xml:"xmlns:dcterms,attr"`
	XmlnsXSI string      `xml:"xmlns:xsi,attr"`
	Title    string      `xml:"dc:title,omitempty"`
	Creator  string      `xml:"dc:creator"`
	Created  w3cDateTime `xml:"dcterms:created"`
	Modified w3cDateTime `xml:"dcterms:modified"`
}

type w3cDateTime struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

const generator = "pdf2pptx"

func (p *Presentation) coreProps() corePropsXML {
	created := p.Created
	if created.IsZero() {
		created = time.Now()
	}
	ts := w3cDateTime{Type: "dcterms:W3CDTF", Value: created.UTC().Format(time.RFC3339)}
	return corePropsXML{
		XmlnsCP:  nsCoreProps,
		XmlnsDC:  "http://purl.org/dc/elements/1.1/",
		XmlnsDCT: "http://purl.org/dc/terms/",
		XmlnsXSI: "http://www.w3.org/2001/XMLSchema-instance",
		Title:    p.Title,
		Creator:  generator,
		Created:  ts,
		Modified: ts,
	}
}

type appPropsXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	Application string   `xml:"Application"`
	Slides      int      `xml:"Slides"`
}

func (p *Presentation) appProps() appPropsXML {
	return appPropsXML{Xmlns: nsExtendedProps, Application: generator, Slides: len(p.slides)}
}

// --- ppt/presentation.xml ---

type presentationXML struct {
	XMLName        xml.Name           `xml:"p:presentation"`
	XmlnsA         string             `xml:"xmlns:a,attr"`
	XmlnsR         string             `xml:"xmlns:r,attr"`
	XmlnsP         string             `xml:"xmlns:p,attr"`
	SlideMasterIDs []slideMasterIDXML `xml:"p:sldMasterIdLst>p:sldMasterId"`
	SlideIDs       []slideIDXML       `xml:"p:sldIdLst>p:sldId"`
	SlideSize      extentXML          `xml:"p:sldSz"`
	NotesSize      extentXML          `xml:"p:notesSz"`
}

type slideMasterIDXML struct {
	ID  uint32 `xml:"id,attr"`
	RID string `xml:"r:id,attr"`
}

type slideIDXML struct {
	ID  int    `xml:"id,attr"`
	RID string `xml:"r:id,attr"`
}

type extentXML struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

func (p *Presentation) presentation() presentationXML {
	x := presentationXML{
		XmlnsA:         nsDrawingML,
		XmlnsR:         nsRelationships,
		XmlnsP:         nsPresentationML,
		SlideMasterIDs: []slideMasterIDXML{{ID: 2147483648, RID: "rId1"}},
		SlideSize:      extentXML{Cx: p.width, Cy: p.height},
		NotesSize:      extentXML{Cx: 6858000, Cy: 9144000},
	}
	for i := range p.slides {
		x.SlideIDs = append(x.SlideIDs, slideIDXML{ID: firstSlideID + i, RID: slideRelID(i)})
	}
	return x
}

// --- ppt/slides/slideN.xml ---

type slideXML struct {
	XMLName   xml.Name     `xml:"p:sld"`
	XmlnsA    string       `xml:"xmlns:a,attr"`
	XmlnsR    string       `xml:"xmlns:r,attr"`
	XmlnsP    string       `xml:"xmlns:p,attr"`
	SpTree    spTreeXML    `xml:"p:cSld>p:spTree"`
	ClrMapOvr clrMapOvrXML `xml:"p:clrMapOvr"`
}

type clrMapOvrXML struct {
	MasterClrMapping struct{} `xml:"a:masterClrMapping"`
}

type spTreeXML struct {
	NvGrpSpPr nvGrpSpPrXML `xml:"p:nvGrpSpPr"`
	GrpSpPr   grpSpPrXML   `xml:"p:grpSpPr"`
	Pics      []picXML     `xml:"p:pic"`
}

type nvGrpSpPrXML struct {
	CNvPr      cNvPrXML `xml:"p:cNvPr"`
	CNvGrpSpPr struct{} `xml:"p:cNvGrpSpPr"`
	NvPr       struct{} `xml:"p:nvPr"`
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type grpSpPrXML struct {
	Xfrm groupXfrmXML `xml:"a:xfrm"`
}

type groupXfrmXML struct {
	Off   offsetXML `xml:"a:off"`
	Ext   extentXML `xml:"a:ext"`
	ChOff offsetXML `xml:"a:chOff"`
	ChExt extentXML `xml:"a:chExt"`
}

type offsetXML struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type picXML struct {
	NvPicPr  nvPicPrXML  `xml:"p:nvPicPr"`
	BlipFill blipFillXML `xml:"p:blipFill"`
	SpPr     picSpPrXML  `xml:"p:spPr"`
}

type nvPicPrXML struct {
	CNvPr    cNvPrXML    `xml:"p:cNvPr"`
	CNvPicPr cNvPicPrXML `xml:"p:cNvPicPr"`
	NvPr     struct{}    `xml:"p:nvPr"`
}

type cNvPicPrXML struct {
	PicLocks picLocksXML `xml:"a:picLocks"`
}

type picLocksXML struct {
	NoChangeAspect int `xml:"noChangeAspect,attr"`
}

type blipFillXML struct {
	Blip    blipXML    `xml:"a:blip"`
	Stretch stretchXML `xml:"a:stretch"`
}

type blipXML struct {
	Embed string `xml:"r:embed,attr"`
}

type stretchXML struct {
	FillRect struct{} `xml:"a:fillRect"`
}

type picSpPrXML struct {
	Xfrm     xfrmXML     `xml:"a:xfrm"`
	PrstGeom prstGeomXML `xml:"a:prstGeom"`
}

type xfrmXML struct {
	Off offsetXML `xml:"a:off"`
	Ext extentXML `xml:"a:ext"`
}

type prstGeomXML struct {
	Prst  string   `xml:"prst,attr"`
	AvLst struct{} `xml:"a:avLst"`
}

func (s *Slide) xml(media []mediaPart) slideXML {
	x := slideXML{
		XmlnsA: nsDrawingML,
		XmlnsR: nsRelationships,
		XmlnsP: nsPresentationML,
		SpTree: spTreeXML{
			NvGrpSpPr: nvGrpSpPrXML{CNvPr: cNvPrXML{ID: 1, Name: ""}},
		},
	}
	for i, m := range media {
		x.SpTree.Pics = append(x.SpTree.Pics, picXML{
			NvPicPr: nvPicPrXML{
				CNvPr:    cNvPrXML{ID: i + 2, Name: fmt.Sprintf("Picture %d", i+1)},
				CNvPicPr: cNvPicPrXML{PicLocks: picLocksXML{NoChangeAspect: 1}},
			},
			BlipFill: blipFillXML{Blip: blipXML{Embed: m.relID}},
			SpPr: picSpPrXML{
				Xfrm: xfrmXML{
					Off: offsetXML{X: m.pic.left, Y: m.pic.top},
					Ext: extentXML{Cx: m.pic.width, Cy: m.pic.height},
				},
				PrstGeom: prstGeomXML{Prst: "rect"},
			},
		})
	}
	return x
}
