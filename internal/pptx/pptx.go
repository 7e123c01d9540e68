// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pptx writes PresentationML (.pptx) packages made of blank slides
// carrying positioned pictures. It covers only what an image deck needs:
// one slide master, one blank layout, a theme, and picture shapes.
package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Slide size limits in EMU, as enforced by PowerPoint.
const (
	minSlideSize = 914400
	maxSlideSize = 51206400
)

// Presentation is an in-memory deck. Picture bytes are read from disk only
// when the package is written.
type Presentation struct {
	width, height int64
	slides        []*Slide

	// Title is stored in the package core properties.
	Title string
	// Created is stored in the package core properties; zero means now.
	Created time.Time
}

// Slide is one blank slide.
type Slide struct {
	pictures []picture
}

type picture struct {
	path                     string
	left, top, width, height int64
}

// New creates an empty presentation with the given slide size in EMU.
func New(width, height int64) *Presentation {
	return &Presentation{width: width, height: height}
}

// Size returns the slide width and height in EMU.
func (p *Presentation) Size() (width, height int64) {
	return p.width, p.height
}

// AddBlankSlide appends a slide using the blank layout.
func (p *Presentation) AddBlankSlide() *Slide {
	s := &Slide{}
	p.slides = append(p.slides, s)
	return s
}

// SlideCount returns the number of slides.
func (p *Presentation) SlideCount() int {
	return len(p.slides)
}

// AddPicture places the image file at path on the slide. Coordinates are
// EMU. The file is read when the presentation is written.
func (s *Slide) AddPicture(path string, left, top, width, height int64) error {
	if _, ok := mediaContentType(path); !ok {
		return fmt.Errorf("unsupported image type %q", filepath.Ext(path))
	}
	if width < 0 || height < 0 {
		return fmt.Errorf("negative picture size %dx%d", width, height)
	}
	s.pictures = append(s.pictures, picture{path: path, left: left, top: top, width: width, height: height})
	return nil
}

// Save writes the package to path, replacing any existing file.
func (p *Presentation) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := p.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write streams the complete package to w.
func (p *Presentation) Write(w io.Writer) error {
	if p.width < minSlideSize || p.width > maxSlideSize || p.height < minSlideSize || p.height > maxSlideSize {
		return fmt.Errorf("slide size %dx%d EMU out of range", p.width, p.height)
	}

	zw := zip.NewWriter(w)
	pw := &packageWriter{zw: zw}

	media := p.mediaParts()
	pw.xmlPart("[Content_Types].xml", p.contentTypes(media))
	pw.xmlPart("_rels/.rels", packageRels())
	pw.xmlPart("docProps/core.xml", p.coreProps())
	pw.xmlPart("docProps/app.xml", p.appProps())
	pw.xmlPart("ppt/presentation.xml", p.presentation())
	pw.xmlPart("ppt/_rels/presentation.xml.rels", p.presentationRels())
	pw.rawPart("ppt/slideMasters/slideMaster1.xml", slideMasterXML)
	pw.xmlPart("ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels())
	pw.rawPart("ppt/slideLayouts/slideLayout1.xml", slideLayoutXML)
	pw.xmlPart("ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels())
	pw.rawPart("ppt/theme/theme1.xml", themeXML)

	for i, s := range p.slides {
		n := i + 1
		pw.xmlPart(fmt.Sprintf("ppt/slides/slide%d.xml", n), s.xml(media[i]))
		pw.xmlPart(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRels(media[i]))
	}
	for _, parts := range media {
		for _, m := range parts {
			pw.filePart("ppt/media/"+m.name, m.source)
		}
	}

	if pw.err != nil {
		zw.Close()
		return pw.err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing package: %w", err)
	}
	return nil
}

// mediaPart is one image stored under ppt/media/.
type mediaPart struct {
	name   string // e.g. image3.png
	source string // file on disk
	relID  string // relationship id within its slide
	pic    picture
}

// mediaParts assigns package-unique media names to every picture, grouped
// by slide.
func (p *Presentation) mediaParts() [][]mediaPart {
	out := make([][]mediaPart, len(p.slides))
	n := 0
	for i, s := range p.slides {
		for j, pic := range s.pictures {
			n++
			ext := strings.ToLower(filepath.Ext(pic.path))
			if ext == ".jpeg" {
				ext = ".jpg"
			}
			out[i] = append(out[i], mediaPart{
				name:   fmt.Sprintf("image%d%s", n, ext),
				source: pic.path,
				relID:  fmt.Sprintf("rId%d", j+2), // rId1 is the layout
				pic:    pic,
			})
		}
	}
	return out
}

var mediaTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

func mediaContentType(path string) (string, bool) {
	ct, ok := mediaTypes[strings.ToLower(filepath.Ext(path))]
	return ct, ok
}

// packageWriter adds parts to a zip archive, keeping the first error.
type packageWriter struct {
	zw  *zip.Writer
	err error
}

func (pw *packageWriter) create(name string) io.Writer {
	if pw.err != nil {
		return nil
	}
	w, err := pw.zw.Create(name)
	if err != nil {
		pw.err = fmt.Errorf("adding %s: %w", name, err)
		return nil
	}
	return w
}

func (pw *packageWriter) xmlPart(name string, v any) {
	w := pw.create(name)
	if w == nil {
		return
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		pw.err = fmt.Errorf("writing %s: %w", name, err)
		return
	}
	if err := xml.NewEncoder(w).Encode(v); err != nil {
		pw.err = fmt.Errorf("encoding %s: %w", name, err)
	}
}

func (pw *packageWriter) rawPart(name, content string) {
	w := pw.create(name)
	if w == nil {
		return
	}
	if _, err := io.WriteString(w, content); err != nil {
		pw.err = fmt.Errorf("writing %s: %w", name, err)
	}
}

func (pw *packageWriter) filePart(name, src string) {
	w := pw.create(name)
	if w == nil {
		return
	}
	f, err := os.Open(src)
	if err != nil {
		pw.err = fmt.Errorf("reading image %s: %w", src, err)
		return
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		pw.err = fmt.Errorf("copying image %s: %w", src, err)
	}
}
