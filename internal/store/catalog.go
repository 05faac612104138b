package store

import (
	"time"

	"github.com/artyatra/artyatra/models"
)

// SeedArtStyles returns the static art-style catalog. Coordinates point at
// the style's place of origin.
func SeedArtStyles() []models.ArtStyle {
	now := time.Now()
	return []models.ArtStyle{
		{
			ID:                   "warli-art-001",
			Name:                 "Warli Art",
			OriginLocation:       models.LatLng{Lat: 19.0760, Lng: 72.8777},
			Description:          "Ancient tribal art form using geometric patterns in white pigment on mud walls, depicting daily life and nature.",
			FunFacts:             []string{"Over 3000 years old", "Uses rice paste and natural gum", "Traditionally painted by women"},
			CulturalSignificance: "Sacred art form representing harmony between humans, animals, and nature in tribal communities.",
			State:                "Maharashtra",
			CreatedAt:            now,
		},
		{
			ID:                   "pochampally-ikat-001",
			Name:                 "Pochampally Ikat",
			OriginLocation:       models.LatLng{Lat: 17.3850, Lng: 78.4867},
			Description:          "Traditional tie-dye textile art creating intricate geometric patterns through resist dyeing technique.",
			FunFacts:             []string{"UNESCO protected craft", "Takes 3-4 months per saree", "Known as the Silk City of India"},
			CulturalSignificance: "Royal patronage art form showcasing the weaving expertise passed down through generations.",
			State:                "Telangana",
			CreatedAt:            now,
		},
		{
			ID:                   "thanjavur-painting-001",
			Name:                 "Thanjavur Painting",
			OriginLocation:       models.LatLng{Lat: 10.7905, Lng: 79.1378},
			Description:          "Classical South Indian painting style featuring rich colors, gold foil work, and religious themes.",
			FunFacts:             []string{"Uses 22-carat gold foil", "Semi-precious stones embedded", "Maratha period origin"},
			CulturalSignificance: "Sacred art form depicting Hindu deities, essential for temple decoration and spiritual practices.",
			State:                "Tamil Nadu",
			CreatedAt:            now,
		},
		{
			ID:                   "madhubani-painting-001",
			Name:                 "Madhubani Painting",
			OriginLocation:       models.LatLng{Lat: 26.3598, Lng: 86.0661},
			Description:          "Vibrant folk art from Bihar featuring nature and mythology themes using fingers, twigs, and matchsticks.",
			FunFacts:             []string{"Originally done on mud walls", "No blank spaces left", "Passed mother to daughter"},
			CulturalSignificance: "Wedding and festival art form expressing folk beliefs and celebrating life events in rural communities.",
			State:                "Bihar",
			CreatedAt:            now,
		},
		{
			ID:                   "kalamkari-001",
			Name:                 "Kalamkari",
			OriginLocation:       models.LatLng{Lat: 15.9129, Lng: 79.7400},
			Description:          "Hand-painted textile art using natural dyes and depicting mythological stories and nature motifs.",
			FunFacts:             []string{"23-step process", "Uses bamboo pen", "Persian influence"},
			CulturalSignificance: "Storytelling tradition through cloth, preserving ancient epics and connecting communities to their heritage.",
			State:                "Andhra Pradesh",
			CreatedAt:            now,
		},
		{
			ID:                   "pattachitra-001",
			Name:                 "Pattachitra",
			OriginLocation:       models.LatLng{Lat: 19.8135, Lng: 85.0859},
			Description:          "Traditional scroll painting from Odisha featuring mythological narratives with intricate details and vibrant colors.",
			FunFacts:             []string{"Cloth canvas preparation", "Natural stone colors", "No pencil sketches"},
			CulturalSignificance: "Temple art form narrating Jagannath legends, integral to Odishan religious and cultural identity.",
			State:                "Odisha",
			CreatedAt:            now,
		},
		{
			ID:                   "gond-art-001",
			Name:                 "Gond Art",
			OriginLocation:       models.LatLng{Lat: 22.9734, Lng: 78.6569},
			Description:          "Tribal art form using dots and lines to create intricate patterns depicting folklore and nature.",
			FunFacts:             []string{"Signature dot technique", "Natural colors from earth", "Dreamtime stories"},
			CulturalSignificance: "Spiritual connection to nature and ancestors, preserving tribal wisdom and environmental knowledge.",
			State:                "Madhya Pradesh",
			CreatedAt:            now,
		},
		{
			ID:                   "pichwai-painting-001",
			Name:                 "Pichwai Painting",
			OriginLocation:       models.LatLng{Lat: 24.5854, Lng: 73.7125},
			Description:          "Devotional art form depicting Lord Krishna, traditionally hung behind temple deities with seasonal themes.",
			FunFacts:             []string{"Nathdwara tradition", "Seasonal festivals depicted", "Intricate cloth work"},
			CulturalSignificance: "Temple worship art expressing devotion to Krishna, marking religious festivals and seasonal celebrations.",
			State:                "Rajasthan",
			CreatedAt:            now,
		},
	}
}

// SeedCategories returns the static AP/Telangana art and craft categories
// used by the search endpoints.
func SeedCategories() []models.Category {
	return []models.Category{
		{
			Name:        "Cheriyal Scroll Paintings (Telangana)",
			OriginName:  "Cheriyal, Telangana",
			Lat:         18.994, Lng: 78.890,
			Description: "Narrative Nakashi scrolls illustrating epics and caste-based tales, traditionally used by storytellers.",
			FunFacts: []string{
				"Traditionally painted on khadi scrolls with natural pigments.",
				"Commissioned for itinerant bards to narrate village-to-village.",
				"Bold outlines, flat fills, and expressive eyes stand out.",
			},
		},
		{
			Name:        "Nirmal Paintings (Telangana)",
			OriginName:  "Nirmal, Telangana",
			Lat:         19.095, Lng: 78.344,
			Description: "Mythological and nature themes on wood panels using bright hues and a distinct golden backdrop.",
			FunFacts: []string{
				"Shares lineage with Nirmal toys and a similar painting tradition.",
				"Patronized historically by local courts and nobility.",
				"Natural pigments and gold tones are characteristic.",
			},
		},
		{
			Name:        "Kalamkari (Andhra, Machilipatnam & Srikalahasti)",
			OriginName:  "Srikalahasti & Machilipatnam, Andhra Pradesh",
			Lat:         13.752, Lng: 79.703,
			Description: "Hand-painted or block-printed textiles narrating epics; Srikalahasti is freehand pen-work, Machilipatnam uses blocks.",
			FunFacts: []string{
				"'Kalam' means pen; bamboo/cotton nibs are used.",
				"Natural mordants yield indigo, madder red, and black.",
				"Temple hangings depict Ramayana/Mahabharata scenes.",
			},
		},
		{
			Name:        "Lepakshi Wall Paintings (Andhra)",
			OriginName:  "Lepakshi, Andhra Pradesh",
			Lat:         13.804, Lng: 77.609,
			Description: "Vijayanagara-era murals adorning temple ceilings and walls, famed for dynamism and color.",
			FunFacts: []string{
				"The Veerabhadra Temple houses famous murals.",
				"Themes include Shiva-Parvati and Kiratarjuneeyam.",
				"Mineral colors on lime plasters were used.",
			},
		},
		{
			Name:        "Deccani Miniature Painting",
			OriginName:  "Hyderabad Courts (Deccan)",
			Lat:         17.385, Lng: 78.486,
			Description: "Persian-influenced miniatures with opulent palettes and lyrical compositions.",
			FunFacts: []string{
				"Flourished under the Qutb Shahi dynasty.",
				"Lavish textiles and garden scenes are common.",
				"Distinct from Mughal miniatures in palette.",
			},
		},
		{
			Name:        "Pochampally Ikat (Telangana)",
			OriginName:  "Bhoodan Pochampally, Telangana",
			Lat:         17.283, Lng: 78.894,
			Description: "Double-ikat weaving with intricate geometric motifs and vibrant contrasts.",
			FunFacts: []string{
				"Yarns are resist-dyed before weaving.",
				"Holds a Geographical Indication (GI) tag.",
				"Many households still use traditional looms.",
			},
		},
		{
			Name:        "Nirmal Toys (Telangana)",
			OriginName:  "Nirmal, Telangana",
			Lat:         19.095, Lng: 78.344,
			Description: "Handcrafted wooden toys painted in bright colors; shares aesthetics with Nirmal painting.",
			FunFacts: []string{
				"Uses locally sourced softwood.",
				"Themes range from animals to deities.",
				"Natural dyes and lacquer finishes.",
			},
		},
		{
			Name:        "Etikoppaka Wooden Doll (Andhra)",
			OriginName:  "Etikoppaka, Andhra Pradesh",
			Lat:         17.997, Lng: 83.431,
			Description: "Lathe-turned wooden toys finished with natural lacquer (Nakkapalli lacquerware).",
			FunFacts: []string{
				"Known for soft, organic forms.",
				"Craft dates back centuries along the Varaha belt.",
				"GI-tagged handicraft.",
			},
		},
		{
			Name:        "Kondapalli Toys (Andhra)",
			OriginName:  "Kondapalli, Andhra Pradesh",
			Lat:         16.620, Lng: 80.534,
			Description: "Hand-carved softwood figurines and sets; bright storytelling dioramas.",
			FunFacts: []string{
				"Made from 'Tella Poniki' softwood.",
				"Village tableaux and mythic sets are classics.",
				"Lightweight and collectible.",
			},
		},
		{
			Name:        "Banjara Embroidery (Both States)",
			OriginName:  "Banjara/Lambadi Settlements (Deccan)",
			Lat:         16.750, Lng: 78.050,
			Description: "Mirror-work and bold embroidery by the Banjara (Lambadi) community, with vibrant geometric motifs.",
			FunFacts: []string{
				"Heavy use of mirrors, shells, and coins.",
				"Traditional attire features dense stitches.",
				"Found across Deccan trade routes.",
			},
		},
		{
			Name:        "Andhra Stone Carving (Andhra)",
			OriginName:  "Tirupati Region, Andhra Pradesh",
			Lat:         13.628, Lng: 79.419,
			Description: "Temple sculpture traditions with pillars, icons, and reliefs of high craftsmanship.",
			FunFacts: []string{
				"Granite and schist are commonly worked.",
				"Workshops cater to temples across the South.",
				"Motifs follow Agama/Shilpa Shastra.",
			},
		},
		{
			Name:        "Bidriware (Telangana)",
			OriginName:  "Hyderabad Market Tradition",
			Lat:         17.385, Lng: 78.486,
			Description: "Blackened metalware with silver inlay; Deccan courts popularized its patronage and trade.",
			FunFacts: []string{
				"Alloy is darkened using special soil treatments.",
				"Floral and geometric inlay patterns are signatures.",
				"Closely tied to Deccan sultanate aesthetics.",
			},
		},
		{
			Name:        "Oggu Katha (Telangana)",
			OriginName:  "Siddipet Region, Telangana",
			Lat:         18.104, Lng: 78.846,
			Description: "Ballad performance devoted to Mallanna and other deities, combining music and narration.",
			FunFacts: []string{
				"Troupes carry traditional instruments.",
				"Often tied to ritual and festivals.",
				"Highly dramatic costumes and delivery.",
			},
		},
		{
			Name:        "Burra Katha (Andhra)",
			OriginName:  "Coastal Andhra (Guntur Belt)",
			Lat:         16.306, Lng: 80.436,
			Description: "Narrative storytelling with a central lead and two side performers, mixing satire and lore.",
			FunFacts: []string{
				"Named after the 'burra' instrument.",
				"Weaves social commentary with mythology.",
				"Popular at fairs and village gatherings.",
			},
		},
		{
			Name:        "Lambadi Dance (Both States)",
			OriginName:  "Nalgonda/Nizamabad Corridors",
			Lat:         17.056, Lng: 79.267,
			Description: "Embroidery and dance of the Lambadi (Banjara) community, rich with mirrors and coins.",
			FunFacts: []string{
				"Dance has swirling skirts and jingling adornments.",
				"Embroidery motifs reflect nomadic heritage.",
				"Garments are often heirloom pieces.",
			},
		},
		{
			Name:        "Tholu Bommalata (Andhra & Telangana)",
			OriginName:  "Nimmalakunta (Anantapur), Andhra Pradesh",
			Lat:         14.556, Lng: 77.720,
			Description: "Shadow-puppet theatre using painted translucent leather to narrate epics.",
			FunFacts: []string{
				"Articulated puppets colored with natural dyes.",
				"All-night performances during festivals.",
				"Narration, music, and light interplay create drama.",
			},
		},
	}
}
