// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reading structures, namespace-agnostic like a PPTX reader's.
type readPresentation struct {
	SlideIDs []struct {
		ID  int    `xml:"id,attr"`
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
	SlideSize struct {
		Cx int64 `xml:"cx,attr"`
		Cy int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
}

type readSlide struct {
	Pics []struct {
		Embed struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships embed,attr"`
		} `xml:"blipFill>blip"`
		Off struct {
			X int64 `xml:"x,attr"`
			Y int64 `xml:"y,attr"`
		} `xml:"spPr>xfrm>off"`
		Ext struct {
			Cx int64 `xml:"cx,attr"`
			Cy int64 `xml:"cy,attr"`
		} `xml:"spPr>xfrm>ext"`
	} `xml:"cSld>spTree>pic"`
}

type readRels struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))))
	require.NoError(t, f.Close())
	return path
}

func openPackage(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	parts := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		parts[f.Name] = b
	}
	return parts
}

func TestWrite_TwoSlides(t *testing.T) {
	dir := t.TempDir()
	img1 := writePNG(t, dir, "page_001.png", 40, 30)
	img2 := writePNG(t, dir, "page_002.png", 30, 40)

	p := New(12191695, 6858000)
	p.Title = "quarterly <report>"
	p.Created = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, p.AddBlankSlide().AddPicture(img1, 0, 100, 12191695, 6857800))
	require.NoError(t, p.AddBlankSlide().AddPicture(img2, 3000000, 0, 5143500, 6858000))
	assert.Equal(t, 2, p.SlideCount())

	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))
	parts := openPackage(t, buf.Bytes())

	for _, name := range []string{
		"[Content_Types].xml", "_rels/.rels", "docProps/core.xml", "docProps/app.xml",
		"ppt/presentation.xml", "ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml", "ppt/slideMasters/_rels/slideMaster1.xml.rels",
		"ppt/slideLayouts/slideLayout1.xml", "ppt/slideLayouts/_rels/slideLayout1.xml.rels",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml", "ppt/slides/_rels/slide1.xml.rels",
		"ppt/slides/slide2.xml", "ppt/slides/_rels/slide2.xml.rels",
		"ppt/media/image1.png", "ppt/media/image2.png",
	} {
		assert.Contains(t, parts, name)
	}

	// Every part must be well-formed XML.
	for name, b := range parts {
		if filepath.Ext(name) != ".xml" && filepath.Ext(name) != ".rels" {
			continue
		}
		dec := xml.NewDecoder(bytes.NewReader(b))
		for {
			_, err := dec.Token()
			if err == io.EOF {
				break
			}
			require.NoError(t, err, "part %s", name)
		}
	}

	var pres readPresentation
	require.NoError(t, xml.Unmarshal(parts["ppt/presentation.xml"], &pres))
	assert.Equal(t, int64(12191695), pres.SlideSize.Cx)
	assert.Equal(t, int64(6858000), pres.SlideSize.Cy)
	require.Len(t, pres.SlideIDs, 2)
	assert.Equal(t, 256, pres.SlideIDs[0].ID)
	assert.Equal(t, 257, pres.SlideIDs[1].ID)

	var presRels readRels
	require.NoError(t, xml.Unmarshal(parts["ppt/_rels/presentation.xml.rels"], &presRels))
	targets := map[string]string{}
	for _, r := range presRels.Relationships {
		targets[r.ID] = r.Target
	}
	assert.Equal(t, "slides/slide1.xml", targets[pres.SlideIDs[0].RID])
	assert.Equal(t, "slides/slide2.xml", targets[pres.SlideIDs[1].RID])

	var s2 readSlide
	require.NoError(t, xml.Unmarshal(parts["ppt/slides/slide2.xml"], &s2))
	require.Len(t, s2.Pics, 1)
	assert.Equal(t, int64(3000000), s2.Pics[0].Off.X)
	assert.Equal(t, int64(0), s2.Pics[0].Off.Y)
	assert.Equal(t, int64(5143500), s2.Pics[0].Ext.Cx)
	assert.Equal(t, int64(6858000), s2.Pics[0].Ext.Cy)

	var s2Rels readRels
	require.NoError(t, xml.Unmarshal(parts["ppt/slides/_rels/slide2.xml.rels"], &s2Rels))
	var imageTarget string
	for _, r := range s2Rels.Relationships {
		if r.ID == s2.Pics[0].Embed.RID {
			imageTarget = r.Target
		}
	}
	assert.Equal(t, "../media/image2.png", imageTarget)

	want, err := os.ReadFile(img2)
	require.NoError(t, err)
	assert.Equal(t, want, parts["ppt/media/image2.png"])

	assert.Contains(t, string(parts["docProps/core.xml"]), "quarterly &lt;report&gt;")
	assert.Contains(t, string(parts["docProps/core.xml"]), "2026-01-02T03:04:05Z")
	assert.Contains(t, string(parts["docProps/app.xml"]), "<Slides>2</Slides>")
	assert.Contains(t, string(parts["[Content_Types].xml"]), `Extension="png"`)
}

func TestAddPicture_Rejects(t *testing.T) {
	s := New(9144000, 6858000).AddBlankSlide()
	assert.ErrorContains(t, s.AddPicture("page.svg", 0, 0, 1, 1), "unsupported image type")
	assert.ErrorContains(t, s.AddPicture("page.png", 0, 0, -1, 1), "negative picture size")
}

func TestWrite_Errors(t *testing.T) {
	t.Run("missing image file", func(t *testing.T) {
		p := New(9144000, 6858000)
		require.NoError(t, p.AddBlankSlide().AddPicture(filepath.Join(t.TempDir(), "gone.png"), 0, 0, 10, 10))
		err := p.Write(io.Discard)
		assert.ErrorContains(t, err, "reading image")
	})

	t.Run("slide size out of range", func(t *testing.T) {
		err := New(100, 100).Write(io.Discard)
		assert.ErrorContains(t, err, "out of range")
	})
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir, "p.png", 10, 10)
	p := New(9144000, 6858000)
	require.NoError(t, p.AddBlankSlide().AddPicture(img, 0, 0, 6858000, 6858000))

	out := filepath.Join(dir, "deck.pptx")
	require.NoError(t, p.Save(out))

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()
	assert.NotEmpty(t, zr.File)

	err = p.Save(filepath.Join(dir, "no-such-dir", "deck.pptx"))
	assert.ErrorContains(t, err, "creating")
}
