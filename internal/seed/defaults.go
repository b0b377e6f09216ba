package seed

import "github.com/Zachkp/portfolio-server/internal/model"

var (
	webDesign = `Responsive single-page sites built with Vue and a small Go backend,
	from a first sketch to a deployed bundle with a working contact form.`

	photography = `Portrait and product photography with light retouching, delivered as
	web-ready images sized for galleries and social posts.`

	videoEditing = `Short-form video cuts with titles, colour correction and music sync
	for portfolios, launches and event recaps.`

	cameraProject = `An in-browser camera page that captures stills from the webcam and
	renders them into a Three.js gallery, animated with GSAP.`

	galleryProject = `A filterable portfolio gallery that loads items from the API and
	lazy-loads media so the first paint stays fast on mobile.`

	contactProject = `A contact form with optional attachments that stores every message
	in an embedded document store and emails a copy to the owner.`
)

// Default is the content the site ships with when no seed file is given.
func Default() *Data {
	return &Data{
		Services: []model.Service{
			{Name: "Web Design", Price: 1500, Description: webDesign},
			{Name: "Photography", Price: 800, Description: photography},
			{Name: "Video Editing", Price: 1200, Description: videoEditing},
		},
		Portfolio: []model.PortfolioItem{
			{Title: "Camera Page", Description: cameraProject, Media: "/images/camera.png"},
			{Title: "Portfolio Gallery", Description: galleryProject, Media: "/images/gallery.png"},
			{Title: "Contact Form", Description: contactProject, Media: "/images/contact.png"},
		},
	}
}
