package tone

// LogDescription explains the log transform on the grayscale page.
const LogDescription = `Log transformation adjusts the brightness distribution of an image so that
detail in dark regions becomes more visible. It is typically used to boost
contrast in images with a large dynamic range.

**Transformed Pixel = Scaling Factor · log(1 + Original Pixel)**`

// PowerLawDescription explains the power-law transform on the grayscale page.
const PowerLawDescription = `Power-law (gamma) transformation reshapes the brightness distribution of an
image to bring out detail in a chosen tonal range.

**Transformed Pixel = Scaling Factor · Original Pixel ^ γ**

- γ > 1: highlights are expanded and shadow detail is compressed, increasing
  contrast in bright regions.
- γ < 1: shadow detail is expanded and highlights are compressed, lowering
  overall contrast so dark regions stand out.`
