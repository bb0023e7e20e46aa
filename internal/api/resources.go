package api

import (
	"time"

	"turismocombita/internal/content"
	"turismocombita/internal/media"
	"turismocombita/internal/sanitize"
	"turismocombita/internal/validation"
)

func policy(p media.Policy) *media.Policy { return &p }

var restaurantes = &resource[content.Restaurante, content.RestaurantePatch]{
	name:     "restaurantes",
	key:      "restaurante",
	notFound: "Restaurante no encontrado",
	upload:   policy(media.PhotoPolicy("restaurantes", "restaurante")),
	items:    func(d *content.Document) *[]content.Restaurante { return &d.Restaurantes },
	validate: validation.ValidateRestaurante,
	parse:    content.ParseRestaurantePatch,
	withFile: func(p *content.RestaurantePatch, path string) { p.Imagen = &path },
	create: func(_ *content.Document, id string, p content.RestaurantePatch, now time.Time) content.Restaurante {
		return content.NewRestaurante(id, p, now)
	},
	apply: content.Restaurante.Apply,
}

var hoteles = &resource[content.Hotel, content.HotelPatch]{
	name:     "hoteles",
	key:      "hotel",
	notFound: "Hotel no encontrado",
	upload:   policy(media.PhotoPolicy("hoteles", "hotel")),
	items:    func(d *content.Document) *[]content.Hotel { return &d.Hoteles },
	validate: validation.ValidateHotel,
	parse:    content.ParseHotelPatch,
	withFile: func(p *content.HotelPatch, path string) { p.Imagen = &path },
	create: func(_ *content.Document, id string, p content.HotelPatch, now time.Time) content.Hotel {
		return content.NewHotel(id, p, now)
	},
	apply: content.Hotel.Apply,
}

var eventos = &resource[content.Evento, content.EventoPatch]{
	name:     "eventos",
	key:      "evento",
	notFound: "Evento no encontrado",
	upload:   policy(media.PhotoPolicy("eventos", "evento")),
	items:    func(d *content.Document) *[]content.Evento { return &d.Eventos },
	validate: validation.ValidateEvento,
	parse:    content.ParseEventoPatch,
	withFile: func(p *content.EventoPatch, path string) { p.Imagen = &path },
	create: func(_ *content.Document, id string, p content.EventoPatch, now time.Time) content.Evento {
		return content.NewEvento(id, p, now)
	},
	apply: content.Evento.Apply,
}

var blog = &resource[content.Post, content.PostPatch]{
	name:     "blog",
	key:      "post",
	notFound: "Publicación no encontrada",
	upload:   policy(media.GalleryPolicy("imagen", "blog", "blog")),
	sort:     sortNewest,
	items:    func(d *content.Document) *[]content.Post { return &d.Blog },
	validate: validation.ValidateBlog,
	parse:    parseSanitizedPost,
	withFile: func(p *content.PostPatch, path string) { p.Imagen = &path },
	create: func(_ *content.Document, id string, p content.PostPatch, now time.Time) content.Post {
		return content.NewPost(id, p, now)
	},
	apply: content.Post.Apply,
}

// parseSanitizedPost cleans the rich-text body before it is stored.
func parseSanitizedPost(f content.Fields) content.PostPatch {
	p := content.ParsePostPatch(f)
	if p.Contenido != nil {
		clean := sanitize.BlogHTML(*p.Contenido)
		p.Contenido = &clean
	}
	return p
}

var artesanos = &resource[content.Artesano, content.ArtesanoPatch]{
	name:     "artesanos",
	key:      "artesano",
	notFound: "Artesano no encontrado",
	upload:   policy(media.PhotoPolicy("artesanos", "artesano")),
	items:    func(d *content.Document) *[]content.Artesano { return &d.Artesanos },
	validate: validation.ValidateArtesano,
	parse:    content.ParseArtesanoPatch,
	withFile: func(p *content.ArtesanoPatch, path string) { p.Imagen = &path },
	create: func(_ *content.Document, id string, p content.ArtesanoPatch, now time.Time) content.Artesano {
		return content.NewArtesano(id, p, now)
	},
	apply: content.Artesano.Apply,
}

var guias = &resource[content.Guia, content.GuiaPatch]{
	name:     "guias",
	key:      "guia",
	notFound: "Guía no encontrado",
	upload:   policy(media.PhotoPolicy("guias", "guia")),
	items:    func(d *content.Document) *[]content.Guia { return &d.Guias },
	validate: validation.ValidateGuia,
	parse:    content.ParseGuiaPatch,
	withFile: func(p *content.GuiaPatch, path string) { p.Imagen = &path },
	create: func(_ *content.Document, id string, p content.GuiaPatch, now time.Time) content.Guia {
		return content.NewGuia(id, p, now)
	},
	apply: content.Guia.Apply,
}

var videos = &resource[content.Video, content.VideoPatch]{
	name:     "videos",
	key:      "video",
	notFound: "Video no encontrado",
	sort:     sortByOrder,
	items:    func(d *content.Document) *[]content.Video { return &d.Videos },
	validate: validation.ValidateVideo,
	parse:    content.ParseVideoPatch,
	create: func(d *content.Document, id string, p content.VideoPatch, now time.Time) content.Video {
		return content.NewVideo(id, p, len(d.Videos)+1, now)
	},
	apply: content.Video.Apply,
}

var galeria = &resource[content.Album, content.AlbumPatch]{
	name:     "galeria",
	key:      "album",
	notFound: "Álbum no encontrado",
	upload:   policy(media.GalleryPolicy("portada", "galeria", "galeria")),
	sort:     sortByOrder,
	items:    func(d *content.Document) *[]content.Album { return &d.Galeria },
	validate: validation.ValidateAlbum,
	parse:    content.ParseAlbumPatch,
	withFile: func(p *content.AlbumPatch, path string) { p.Portada = &path },
	create: func(d *content.Document, id string, p content.AlbumPatch, now time.Time) content.Album {
		return content.NewAlbum(id, p, len(d.Galeria)+1, now)
	},
	apply: content.Album.Apply,
}
